package validation

import (
	corev1 "k8s.io/api/core/v1"

	v1 "github.com/MallardxGreen/K8-Learning-Simulator-sub000/core/types/v1"
)

var replicasRule = ValidationRule{
	Field:      "metadata.replicas",
	Expression: `!has(self.metadata.replicas) || self.metadata.replicas >= 0`,
	Message:    "must be greater than or equal to 0",
}

var portRule = ValidationRule{
	Field:      "metadata.port",
	Expression: `!has(self.metadata.port) || (self.metadata.port >= 1 && self.metadata.port <= 65535)`,
	Message:    "must be between 1 and 65535, inclusive",
}

var imageRule = ValidationRule{
	Field:      "metadata.image",
	Expression: `!has(self.metadata.image) || self.metadata.image != ''`,
	Message:    "image must not be empty",
}

// DefaultRules returns the built-in CEL rules keyed by type tag.
func DefaultRules() map[string][]ValidationRule {
	return map[string][]ValidationRule{
		v1.TypePod:         {imageRule, portRule},
		v1.TypeDeployment:  {imageRule, replicasRule, portRule},
		v1.TypeReplicaSet:  {imageRule, replicasRule},
		v1.TypeStatefulSet: {imageRule, replicasRule},
		v1.TypeDaemonSet:   {imageRule},
		v1.TypeService: {
			portRule,
			{
				Field:      "metadata.targetPort",
				Expression: `!has(self.metadata.targetPort) || (self.metadata.targetPort >= 1 && self.metadata.targetPort <= 65535)`,
				Message:    "must be between 1 and 65535, inclusive",
			},
			{
				Field:      "metadata.nodePort",
				Expression: `!has(self.metadata.nodePort) || (self.metadata.nodePort >= 30000 && self.metadata.nodePort <= 32767)`,
				Message:    "provided port is not in the valid range. The range of valid ports is 30000-32767",
			},
			{
				Field: "metadata.serviceType",
				Expression: `!has(self.metadata.serviceType) || self.metadata.serviceType in ['` +
					string(corev1.ServiceTypeClusterIP) + `', '` +
					string(corev1.ServiceTypeNodePort) + `', '` +
					string(corev1.ServiceTypeLoadBalancer) + `', '` +
					string(corev1.ServiceTypeExternalName) + `']`,
				Message: "supported values: \"ClusterIP\", \"ExternalName\", \"LoadBalancer\", \"NodePort\"",
			},
			{
				Field: "metadata.externalName",
				Expression: `!has(self.metadata.serviceType) || self.metadata.serviceType != '` +
					string(corev1.ServiceTypeExternalName) +
					`' || (has(self.metadata.externalName) && self.metadata.externalName != '')`,
				Message: "must be specified for ExternalName services",
			},
		},
		v1.TypeCronJob: {
			{
				Field:      "metadata.schedule",
				Expression: `has(self.metadata.schedule) && self.metadata.schedule.matches('^\\S+(\\s+\\S+){4}$')`,
				Message:    "must be a standard five field cron expression",
			},
		},
		v1.TypePersistentVolumeClaim: {
			{
				Field:      "metadata.storage",
				Expression: `!has(self.metadata.storage) || self.metadata.storage.matches('^[0-9]+(Ki|Mi|Gi|Ti)?$')`,
				Message:    "must be a quantity such as 1Gi",
			},
		},
	}
}
