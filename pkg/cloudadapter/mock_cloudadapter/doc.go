package mock_cloudadapter

// Run go generate to regenerate these mocks.
//
//go:generate ../../../bin/mockgen -destination cloudformation_mock.go -package mock_cloudadapter -source ../cloudformation.go CloudFormationService
//go:generate ../../../bin/mockgen -destination s3_mock.go -package mock_cloudadapter -source ../s3.go S3Service
//go:generate ../../../bin/mockgen -destination kms_mock.go -package mock_cloudadapter -source ../kms.go KMSService
//go:generate ../../../bin/mockgen -destination ec2_mock.go -package mock_cloudadapter -source ../ec2.go EC2Service
//go:generate ../../../bin/mockgen -destination elb_mock.go -package mock_cloudadapter -source ../elb.go ELBService
